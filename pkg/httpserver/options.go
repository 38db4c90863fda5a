package httpserver

import (
	"net"
	"time"
)

type Option func(*Server)

func Addr(host, port string) Option {
	return func(s *Server) {
		s.server.Addr = net.JoinHostPort(host, port)
	}
}

func Port(port string) Option {
	return Addr("", port)
}

// Listener makes the server accept on an already bound listener,
// Addr and Port are ignored then.
func Listener(l net.Listener) Option {
	return func(s *Server) {
		s.listener = l
	}
}

func ReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.server.ReadTimeout = timeout
	}
}

func WriteTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.server.WriteTimeout = timeout
	}
}

func ShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = timeout
	}
}

package main

import (
	"net"
	"net/http"
	"time"

	"github.com/FAU-CDI/gedpath/internal/monitor"
	"github.com/FAU-CDI/gedpath/internal/stats"
)

// serveMonitor exposes progress information over http until the process
// exits.
func serveMonitor(st *stats.Stats, addr string) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		st.LogError("monitor listen", err)
		return
	}
	st.Log("monitor listening", "addr", listener.Addr().String())

	server := &http.Server{
		Handler:           monitor.New(st).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := server.Serve(listener); err != nil {
		st.LogError("monitor serve", err)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package adstest provides an in-process fake of the ADS search and record
// endpoints for tests.
package adstest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Record is one article served by the fake.
type Record struct {
	Author  string
	Year    int
	Page    string
	Bibcode string
	BibTeX  string
}

// FixtureRecords returns the three fixture articles plus decoys that share
// author and year but not page.
func FixtureRecords() []Record {
	return []Record{
		{Author: "Forbrich", Year: 2010, Page: "1453", Bibcode: "2010ApJ...716.1453F", BibTeX: Forbrich2010BibTeX},
		{Author: "Robitaille", Year: 2006, Page: "256", Bibcode: "2006ApJS..167..256R", BibTeX: Robitaille2006BibTeX},
		{Author: "Robitaille", Year: 2006, Page: "300", Bibcode: "2006ApJ...999..300R"},
		{Author: "Robitaille", Year: 2008, Page: "2413", Bibcode: "2008AJ....136.2413R", BibTeX: Robitaille2008BibTeX},
		{Author: "Robitaille", Year: 2008, Page: "10", Bibcode: "2008ApJ...888...10R"},
	}
}

// Server is a fake ADS. Search matches the author prefix case-insensitively
// and the year range inclusively, like the real endpoint.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	records  []Record
	requests []*http.Request
}

// NewServer starts a fake serving records. It is closed when the test ends.
func NewServer(t testing.TB, records ...Record) *Server {
	t.Helper()
	s := &Server{records: records}
	mux := http.NewServeMux()
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/record", s.handleRecord)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// SearchURL is the search endpoint of the fake.
func (s *Server) SearchURL() string { return s.URL + "/search" }

// RecordURL is the record endpoint of the fake.
func (s *Server) RecordURL() string { return s.URL + "/record" }

// Requests returns a copy of the requests received so far.
func (s *Server) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}

func (s *Server) record(r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r)
	s.mu.Unlock()
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	q := r.URL.Query()
	author := strings.ToLower(strings.TrimPrefix(q.Get("author"), "^"))
	start, _ := strconv.Atoi(q.Get("start_year"))
	end, _ := strconv.Atoi(q.Get("end_year"))

	var lines []string
	for _, rec := range s.records {
		if !strings.HasPrefix(strings.ToLower(rec.Author), author) || rec.Year < start || rec.Year > end {
			continue
		}
		lines = append(lines, fmt.Sprintf("author=%s , year=%d , page=%s , bibcode=%s", rec.Author, rec.Year, rec.Page, rec.Bibcode))
	}

	fmt.Fprintf(w, "Query Results from the Astronomy Database\n\nSelected and retrieved %d abstracts.\n\n", len(lines))
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	bibcode := r.URL.Query().Get("bibcode")
	for _, rec := range s.records {
		if rec.Bibcode == bibcode && rec.BibTeX != "" {
			fmt.Fprintf(w, "Query Results from the ADS Database\n\n\nRetrieved 1 abstracts, starting with number 1.  Total number selected: 1.\n\n%s", rec.BibTeX)
			return
		}
	}
	fmt.Fprintln(w, "Query Results from the ADS Database\n\nRetrieved 0 abstracts.")
}

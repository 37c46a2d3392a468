package main

import (
	"net/http"
	"net/http/httptest"
)

func newPreflight(path string) *http.Request {
	req := httptest.NewRequest(http.MethodOptions, path, nil)
	req.Header.Set("Origin", "https://mesto.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	return req
}

func serve(a *testApp, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.setupRouter().ServeHTTP(rr, req)
	return rr
}

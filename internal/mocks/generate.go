// Package mocks holds gomock doubles for the interfaces botdash depends on.
//
// Regenerate with:
//
//	go generate ./internal/mocks/...
package mocks

// PageFetcher
//
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=page_fetcher_mock.go github.com/MarkoPoloResearchLab/botdash/internal/pagination PageFetcher

package provider

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_adapter.go github.com/kasuboski/animez/pkg/provider Adapter,ServerFetcher,SourceFetcher

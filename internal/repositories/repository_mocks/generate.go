// Package repository_mocks holds the generated gomock doubles for the
// repository interfaces. Regenerate with:
//
//	go generate ./internal/repositories/repository_mocks
package repository_mocks

//go:generate mockgen -source=../interfaces.go -destination=repository_mocks.go -package=repository_mocks

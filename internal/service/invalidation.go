package service

import (
	"context"
	"errors"
)

var (
	ErrSlugExists          = errors.New("slug already exists")
	ErrSlugRequired        = errors.New("slug is required")
	ErrInvalidContent      = errors.New("invalid content document")
	ErrInvalidSectionOwner = errors.New("section must belong to exactly one of a page path or a template")
)

// Invalidator 在后台写入后让缓存的落地页引擎失效。
type Invalidator interface {
	Invalidate(ctx context.Context, reason string) error
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, string) error { return nil }

func orNoop(inv Invalidator) Invalidator {
	if inv == nil {
		return noopInvalidator{}
	}
	return inv
}

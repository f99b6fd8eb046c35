// Package rest implements the signed/public REST surface: account, market,
// trade, and public endpoint families.
package rest

import "github.com/fd1az/okx-client/internal/apperror"

// Envelope is OKX's stable REST response shape: a string status code ("0"
// on success), a human message, and a data array whose element type varies
// per endpoint.
type Envelope[T any] struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data []T    `json:"data"`
}

// Ok reports whether the envelope signals success.
func (e Envelope[T]) Ok() bool {
	return e.Code == "0"
}

// ToResult returns the envelope's full data slice. An empty slice on success
// is a valid result (e.g. "no pending orders"), not an error, so callers
// that expect a list use this rather than ToResultOne.
func (e Envelope[T]) ToResult() ([]T, error) {
	return e.Data, nil
}

// ToResultOne returns the envelope's first data element: endpoints whose
// contract promises exactly one element on success (placing or amending a
// single order, setting leverage) treat an empty data array as a malformed
// response rather than a legitimate empty result.
func (e Envelope[T]) ToResultOne() (*T, error) {
	if len(e.Data) == 0 {
		return nil, apperror.New(apperror.CodeEmptyResult)
	}
	return &e.Data[0], nil
}

// ToResultOneOpt is ToResultOne's optional sibling: an empty data array on
// success means "not found" rather than a malformed response, so it returns
// (nil, nil) instead of erroring.
func (e Envelope[T]) ToResultOneOpt() (*T, error) {
	if len(e.Data) == 0 {
		return nil, nil
	}
	return &e.Data[0], nil
}

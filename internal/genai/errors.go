package genai

import "errors"

var (
	// ErrUpstream: the generation service call itself failed.
	ErrUpstream = errors.New("generator call failed")
	// ErrTimeout: the bounded per-call deadline elapsed.
	ErrTimeout = errors.New("generator call timed out")
	// ErrFormat: the reply carried no fenced JSON block.
	ErrFormat = errors.New("reply missing fenced JSON block")
	// ErrPayload: the fenced block held invalid or mis-shaped JSON.
	ErrPayload = errors.New("reply JSON invalid")
)

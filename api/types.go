package api

import (
	"encoding/json"
)

const (
	opNumber  = "number"
	opNumbers = "numbers"
	opChar    = "char"
	opString  = "string"
	opShuffle = "shuffle"
)

type NumberRequest struct {
	Min int
	Max int
}

type NumberResponse struct {
	Number int `json:"number"`
}

// Count, Length and Items are capped at 100000 per request.
type NumbersRequest struct {
	Count   int `validate:"lte=100000"`
	Min     int
	Max     int
	Shuffle bool
}

type NumbersResponse struct {
	Numbers []int `json:"numbers"`
}

type CharRequest struct {
	Classes string
}

type CharResponse struct {
	Char string `json:"char"`
}

type StringRequest struct {
	Classes string
	Length  int `validate:"lte=100000"`
}

type StringResponse struct {
	String string `json:"string"`
}

type ShuffleRequest struct {
	Items []json.RawMessage `json:"items" validate:"lte=100000"`
}

type ShuffleResponse struct {
	Items []json.RawMessage `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
}

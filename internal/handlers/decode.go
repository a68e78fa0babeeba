package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/pkg/helpers"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into v. Any decode failure is a client error.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.NewValidationError("request body is required")
		}
		return errs.NewValidationError("invalid request body: " + err.Error())
	}
	return nil
}

func queryString(r *http.Request, key string) *string {
	return helpers.NonZero(r.URL.Query().Get(key))
}

func queryDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, errs.NewValidationError(key + " must be a number")
	}
	return &d, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.NewValidationError(key + " must be an integer")
	}
	return n, nil
}

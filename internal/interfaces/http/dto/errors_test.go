package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"REFERENTIAL_CONFLICT", http.StatusConflict},
		{"DUPLICATE_REQUEST", http.StatusConflict},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"NEGATIVE_COST", http.StatusUnprocessableEntity},
		{"INVALID_AMOUNT", http.StatusBadRequest},
		{"INVALID_SETTLEMENT_DAY", http.StatusBadRequest},
		{"EMPTY_SALE", http.StatusBadRequest},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

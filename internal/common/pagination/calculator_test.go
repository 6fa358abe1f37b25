package pagination

import (
	"errors"
	"testing"
)

func TestCalculateOffset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{page: 1, limit: 5, want: 0},
		{page: 2, limit: 5, want: 5},
		{page: 3, limit: 5, want: 10},
		{page: 0, limit: 5, want: 0},
		{page: -2, limit: 5, want: 0},
	}

	for _, tt := range tests {
		if got := CalculateOffset(tt.page, tt.limit); got != tt.want {
			t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{name: "empty", total: 0, limit: 5, want: 0},
		{name: "one item", total: 1, limit: 5, want: 1},
		{name: "exact multiple", total: 10, limit: 5, want: 2},
		{name: "remainder", total: 11, limit: 5, want: 3},
		{name: "zero limit", total: 11, limit: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateTotalPages(tt.total, tt.limit); got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}

func TestValidatePage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		wantErr    bool
	}{
		{name: "first page", page: 1, totalPages: 3},
		{name: "last page", page: 3, totalPages: 3},
		{name: "first page of empty collection", page: 1, totalPages: 0},
		{name: "past the end", page: 4, totalPages: 3, wantErr: true},
		{name: "second page of empty collection", page: 2, totalPages: 0, wantErr: true},
		{name: "zero", page: 0, totalPages: 3, wantErr: true},
		{name: "negative", page: -1, totalPages: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePage(tt.page, tt.totalPages)
			if tt.wantErr != (err != nil) {
				t.Fatalf("ValidatePage(%d, %d) err = %v, wantErr %v", tt.page, tt.totalPages, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPage) {
				t.Fatalf("error %v does not wrap ErrInvalidPage", err)
			}
		})
	}
}

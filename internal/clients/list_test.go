package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr bool
	}{
		{"bare array", `[{"id":1,"name":"a"},{"id":2,"name":"b"}]`, []string{"a", "b"}, false},
		{"results page", `{"count":2,"next":null,"results":[{"id":1,"name":"a"},{"id":2,"name":"b"}]}`, []string{"a", "b"}, false},
		{"empty results", `{"count":0,"results":[]}`, []string{}, false},
		{"empty body", ``, []string{}, false},
		{"null body", `null`, []string{}, false},
		{"null results", `{"count":0,"next":null,"results":null}`, []string{}, false},
		{"object without results", `{"detail":"nope"}`, nil, true},
		{"malformed", `[{"id":`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []models.Category
			err := decodeList([]byte(tt.body), &got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, c := range got {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestEntityPath(t *testing.T) {
	assert.Equal(t, "/clients/suppliers/12/", entityPath(suppliersPath, 12))
	assert.Equal(t, "/quotes/3/", entityPath(quotesPath, 3))
}

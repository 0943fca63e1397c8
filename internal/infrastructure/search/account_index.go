package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/shop-admin-dashboard/internal/domain/entity"
)

// AccountIndex mirrors account views into Elasticsearch for admin search.
// The password hash is never indexed.
type AccountIndex struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewAccountIndex(es *elasticsearch.Client, index string) *AccountIndex {
	return &AccountIndex{ES: es, IndexName: index}
}

type accountDoc struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	IsAdmin        bool   `json:"isAdmin"`
	EmailConfirmed bool   `json:"emailConfirmed"`
	Image          string `json:"image,omitempty"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

func (x *AccountIndex) Index(ctx context.Context, a *entity.Account) error {
	doc := accountDoc{
		ID:             a.ID,
		Name:           a.Name,
		Email:          a.Email,
		IsAdmin:        a.IsAdmin,
		EmailConfirmed: a.EmailConfirmed,
		Image:          a.Image.URL,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.IndexName, DocumentID: a.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(ctx, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Remove deletes the document; a missing document is not an error.
func (x *AccountIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.IndexName, DocumentID: id}
	res, err := req.Do(ctx, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search performs a simple multi_match search on email and name.
func (x *AccountIndex) Search(ctx context.Context, q string, size int) ([]entity.AccountView, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	res, err := x.ES.Search(
		x.ES.Search.WithContext(ctx),
		x.ES.Search.WithIndex(x.IndexName),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source accountDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.AccountView, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source.view())
	}
	return out, nil
}

func (d accountDoc) view() entity.AccountView {
	created, _ := time.Parse(time.RFC3339Nano, d.CreatedAt)
	updated, _ := time.Parse(time.RFC3339Nano, d.UpdatedAt)
	return entity.AccountView{
		ID:             d.ID,
		Name:           d.Name,
		Email:          d.Email,
		IsAdmin:        d.IsAdmin,
		EmailConfirmed: d.EmailConfirmed,
		Image:          d.Image,
		CreatedAt:      created,
		UpdatedAt:      updated,
	}
}

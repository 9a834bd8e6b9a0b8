package internal

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

const defaultProject = "xword-x"

// WordSource loads solver vocabularies from the BigQuery word table.
type WordSource struct {
	client *bigquery.Client
}

func NewWordSource(ctx context.Context) (*WordSource, error) {
	project := os.Getenv("WORDS_PROJECT")
	if project == "" {
		project = defaultProject
	}
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	return &WordSource{client: client}, nil
}

func (ws *WordSource) Close() error {
	return ws.client.Close()
}

// Fetch returns the vocabulary stored for a word scope. Obscure words are
// left out unless requested; the solver treats the merged list as one flat
// vocabulary either way.
func (ws *WordSource) Fetch(ctx context.Context, scope string, includeObscure bool) ([]string, error) {
	q := ws.client.Query(
		"SELECT word_key, obscure FROM `xword-x.FirestoreQuery.all_words` " +
			"WHERE scope = @scope AND obscure IN UNNEST(@obscure)")
	q.Location = "US"
	obscureValues := []bool{false}
	if includeObscure {
		obscureValues = append(obscureValues, true)
	}
	q.Parameters = []bigquery.QueryParameter{
		{Name: "scope", Value: scope},
		{Name: "obscure", Value: obscureValues},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var words []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}
		word, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		words = append(words, word)
	}
	return words, nil
}

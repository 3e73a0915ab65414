// Package glossary maintains a Russian→Ukrainian terminology graph in Neo4j.
// Terms found in a source string are surfaced to the translation prompt so
// the model keeps product vocabulary consistent across files.
package glossary

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// Term is a glossary entry: a Russian term with its fixed Ukrainian rendering.
type Term struct {
	Russian   string
	Ukrainian string
	Category  string
}

// Glossary wraps the Neo4j driver for terminology operations.
type Glossary struct {
	driver neo4j.DriverWithContext
}

// New creates a glossary backed by the given Neo4j instance.
func New(ctx context.Context, uri, username, password string) (*Glossary, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	return &Glossary{driver: driver}, nil
}

// Close releases the driver.
func (g *Glossary) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}

// EnsureSchema creates the uniqueness constraint for terms.
func (g *Glossary) EnsureSchema(ctx context.Context) error {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.Run(ctx,
		`CREATE CONSTRAINT term_russian IF NOT EXISTS
		 FOR (t:Term) REQUIRE t.russian IS UNIQUE`, nil)
	if err != nil {
		return fmt.Errorf("create term constraint: %w", err)
	}
	return nil
}

// UpsertTerms merges terms into the graph.
func (g *Glossary) UpsertTerms(ctx context.Context, terms []Term) error {
	if len(terms) == 0 {
		return nil
	}

	session := g.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	rows := make([]map[string]any, 0, len(terms))
	for _, t := range terms {
		rows = append(rows, map[string]any{
			"russian":   t.Russian,
			"ukrainian": t.Ukrainian,
			"category":  t.Category,
		})
	}

	_, err := session.Run(ctx, `
		UNWIND $terms AS row
		MERGE (t:Term {russian: row.russian})
		SET t.ukrainian = row.ukrainian, t.category = row.category
	`, map[string]any{"terms": rows})
	if err != nil {
		return fmt.Errorf("upsert terms: %w", err)
	}

	log.Info().Int("count", len(terms)).Msg("Upserted glossary terms")
	return nil
}

// AllTerms returns every term in the glossary.
func (g *Glossary) AllTerms(ctx context.Context) ([]Term, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx,
		`MATCH (t:Term) RETURN t.russian AS russian, t.ukrainian AS ukrainian, t.category AS category`,
		nil)
	if err != nil {
		return nil, fmt.Errorf("query terms: %w", err)
	}

	var terms []Term
	for result.Next(ctx) {
		rec := result.Record()
		terms = append(terms, Term{
			Russian:   stringValue(rec, "russian"),
			Ukrainian: stringValue(rec, "ukrainian"),
			Category:  stringValue(rec, "category"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("iterate terms: %w", err)
	}

	return terms, nil
}

// FindRelatedTerms returns glossary entries whose Russian term occurs in the
// given source text, longest matches first so the prompt leads with the most
// specific vocabulary.
func (g *Glossary) FindRelatedTerms(ctx context.Context, text string, limit int) ([]Term, error) {
	terms, err := g.AllTerms(ctx)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(text)
	var hits []Term
	for _, t := range terms {
		if t.Russian == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(t.Russian)) {
			hits = append(hits, t)
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		return len(hits[i].Russian) > len(hits[j].Russian)
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// LinkExample stores a translated pair as an :Example node and connects it
// to the terms whose Russian form appears in its source text.
func (g *Glossary) LinkExample(ctx context.Context, hash, source, translated string, terms []Term) error {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	russians := make([]string, 0, len(terms))
	for _, t := range terms {
		russians = append(russians, t.Russian)
	}

	_, err := session.Run(ctx, `
		MERGE (e:Example {hash: $hash})
		SET e.source = $source, e.translated = $translated
		WITH e
		UNWIND $russians AS r
		MATCH (t:Term {russian: r})
		MERGE (e)-[:USES_TERM]->(t)
	`, map[string]any{
		"hash":       hash,
		"source":     source,
		"translated": translated,
		"russians":   russians,
	})
	if err != nil {
		return fmt.Errorf("link example: %w", err)
	}
	return nil
}

// SeedBuiltinTerms loads the built-in software terminology into the graph.
func (g *Glossary) SeedBuiltinTerms(ctx context.Context) error {
	return g.UpsertTerms(ctx, BuiltinTerms)
}

// BuiltinTerms is the starter ru→uk terminology for mail/admin UI strings.
var BuiltinTerms = []Term{
	{Russian: "пользователь", Ukrainian: "користувач", Category: "ui"},
	{Russian: "пароль", Ukrainian: "пароль", Category: "ui"},
	{Russian: "учетная запись", Ukrainian: "обліковий запис", Category: "ui"},
	{Russian: "настройки", Ukrainian: "налаштування", Category: "ui"},
	{Russian: "папка", Ukrainian: "тека", Category: "ui"},
	{Russian: "сообщение", Ukrainian: "повідомлення", Category: "mail"},
	{Russian: "вложение", Ukrainian: "вкладення", Category: "mail"},
	{Russian: "отправитель", Ukrainian: "відправник", Category: "mail"},
	{Russian: "получатель", Ukrainian: "одержувач", Category: "mail"},
	{Russian: "входящие", Ukrainian: "вхідні", Category: "mail"},
	{Russian: "черновики", Ukrainian: "чернетки", Category: "mail"},
	{Russian: "корзина", Ukrainian: "кошик", Category: "mail"},
	{Russian: "календарь", Ukrainian: "календар", Category: "calendar"},
	{Russian: "встреча", Ukrainian: "зустріч", Category: "calendar"},
	{Russian: "напоминание", Ukrainian: "нагадування", Category: "calendar"},
	{Russian: "сервер", Ukrainian: "сервер", Category: "admin"},
	{Russian: "домен", Ukrainian: "домен", Category: "admin"},
	{Russian: "ошибка", Ukrainian: "помилка", Category: "common"},
	{Russian: "сохранить", Ukrainian: "зберегти", Category: "common"},
	{Russian: "отменить", Ukrainian: "скасувати", Category: "common"},
	{Russian: "удалить", Ukrainian: "видалити", Category: "common"},
	{Russian: "загрузить", Ukrainian: "завантажити", Category: "common"},
}

func stringValue(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

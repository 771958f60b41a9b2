package repository

import (
	"fmt"
	"strings"

	"recipe-share-backend/internal/models"
)

const recipeColumns = `id, user_id, title, ingredients, steps, is_public, category, duration, difficulty, created_at`

// durationAliases maps the labels sent by the web client onto the canonical buckets
var durationAliases = map[string]string{
	"unter 15 min": models.DurationShort,
	"15–30 min":    models.DurationMedium,
	"15-30 min":    models.DurationMedium,
	"über 30 min":  models.DurationLong,
}

// NormalizeDuration returns the canonical bucket for a filter value, or ""
// when the value names no known bucket.
func NormalizeDuration(v string) string {
	v = strings.TrimSpace(v)
	switch v {
	case models.DurationShort, models.DurationMedium, models.DurationLong:
		return v
	}
	return durationAliases[strings.ToLower(v)]
}

// likeEscaper makes search input match literally inside an ILIKE pattern
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildPublicQuery composes the public listing query. Every filter is a bound
// parameter; empty values add no clause at all.
func buildPublicQuery(f models.RecipeFilter) (string, []any) {
	clauses := []string{"is_public = true"}
	var args []any

	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		p := next("%" + likeEscaper.Replace(s) + "%")
		clauses = append(clauses, fmt.Sprintf(
			`(title ILIKE %[1]s ESCAPE '\' OR ingredients ILIKE %[1]s ESCAPE '\' OR steps ILIKE %[1]s ESCAPE '\')`, p))
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		clauses = append(clauses, "category = "+next(c))
	}
	if d := strings.TrimSpace(f.Difficulty); d != "" {
		clauses = append(clauses, "difficulty = "+next(d))
	}

	switch NormalizeDuration(f.Duration) {
	case models.DurationShort:
		clauses = append(clauses, "duration < 15")
	case models.DurationMedium:
		clauses = append(clauses, "duration BETWEEN 15 AND 30")
	case models.DurationLong:
		clauses = append(clauses, "duration > 30")
	}

	query := "SELECT " + recipeColumns + " FROM recipes WHERE " +
		strings.Join(clauses, " AND ") + " ORDER BY created_at DESC, id DESC"
	return query, args
}

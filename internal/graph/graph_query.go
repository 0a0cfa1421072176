package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Override is a definition provided by several mods. Winners are the mods that
// depend, directly or transitively, on every other provider; when there is
// exactly one winner the conflict is settled by load order.
type Override struct {
	Type    string
	ID      string
	Mods    []string
	Winners []string
}

// Resolved reports whether dependency order picks a single provider.
func (o Override) Resolved() bool {
	return len(o.Winners) == 1
}

// GraphQuerier reads conflicts and variable usage back out of the graph.
type GraphQuerier struct {
	driver neo4j.DriverWithContext
}

// NewGraphQuerier creates a new graph querier.
func NewGraphQuerier(driver neo4j.DriverWithContext) *GraphQuerier {
	return &GraphQuerier{driver: driver}
}

// Overrides lists every definition provided by more than one mod.
func (gq *GraphQuerier) Overrides(ctx context.Context) ([]Override, error) {
	session := gq.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (m:Mod)-[:DEFINES]->(d:Definition)
		WITH d, collect(DISTINCT m) AS providers
		WHERE size(providers) > 1
		WITH d, providers,
		     [w IN providers WHERE all(o IN providers WHERE o = w OR EXISTS { MATCH (w)-[:DEPENDS_ON*]->(o) })] AS winners
		RETURN d.type AS type, d.id AS id,
		       [p IN providers | p.name] AS mods,
		       [w IN winners | w.name] AS winners
		ORDER BY type, id
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("query overrides: %w", err)
	}

	var out []Override
	for result.Next(ctx) {
		record := result.Record()
		typ, _ := record.Get("type")
		id, _ := record.Get("id")
		mods, _ := record.Get("mods")
		winners, _ := record.Get("winners")
		out = append(out, Override{
			Type:    asString(typ),
			ID:      asString(id),
			Mods:    asStrings(mods),
			Winners: asStrings(winners),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}
	return out, nil
}

// VariableUsers lists the keys of definitions reading a scripted variable.
func (gq *GraphQuerier) VariableUsers(ctx context.Context, name string) ([]string, error) {
	session := gq.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (d:Definition)-[:USES]->(:ScriptedVariable {name: $name})
		RETURN d.key AS key
		ORDER BY key
	`, map[string]any{"name": name})
	if err != nil {
		return nil, fmt.Errorf("query variable users: %w", err)
	}

	var keys []string
	for result.Next(ctx) {
		k, _ := result.Record().Get("key")
		keys = append(keys, asString(k))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read variable users: %w", err)
	}
	return keys, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStrings(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, asString(it))
	}
	return out
}

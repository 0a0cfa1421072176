package graph

import (
	"context"
	"fmt"

	"modscan/internal/definition"
	"modscan/internal/interpolation"
	"modscan/internal/moddesc"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// GraphBuilder records mods, their dependencies and the definitions they
// provide in Neo4j.
type GraphBuilder struct {
	driver neo4j.DriverWithContext
}

// NewGraphBuilder creates a new graph builder.
func NewGraphBuilder(driver neo4j.DriverWithContext) *GraphBuilder {
	return &GraphBuilder{driver: driver}
}

// EnsureSchema creates constraints on the Neo4j database.
func (gb *GraphBuilder) EnsureSchema(ctx context.Context) error {
	session := gb.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (m:Mod) REQUIRE m.name IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (d:Definition) REQUIRE d.key IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (v:ScriptedVariable) REQUIRE v.name IS UNIQUE",
	}

	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

// AddMod upserts a mod node and its DEPENDS_ON edges.
func (gb *GraphBuilder) AddMod(ctx context.Context, desc *moddesc.Descriptor) error {
	session := gb.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.Run(ctx, `
		MERGE (m:Mod {name: $name})
		SET m.version = $version,
		    m.supported_version = $supported,
		    m.remote_file_id = $remote,
		    m.tags = $tags
	`, map[string]any{
		"name":      desc.Name,
		"version":   desc.Version,
		"supported": desc.SupportedVersion,
		"remote":    desc.RemoteFileID,
		"tags":      desc.Tags,
	})
	if err != nil {
		return fmt.Errorf("upsert mod %s: %w", desc.Name, err)
	}

	for _, dep := range desc.Dependencies {
		_, err := session.Run(ctx, `
			MATCH (m:Mod {name: $name})
			MERGE (d:Mod {name: $dep})
			MERGE (m)-[:DEPENDS_ON]->(d)
		`, map[string]any{"name": desc.Name, "dep": dep})
		if err != nil {
			log.Warn().Err(err).Str("mod", desc.Name).Str("dependency", dep).Msg("Failed to create dependency")
		}
	}
	return nil
}

// definitionRows flattens definitions into Cypher parameters, one row per definition.
func definitionRows(defs []*definition.Definition) []map[string]any {
	rows := make([]map[string]any, 0, len(defs))
	for _, d := range defs {
		vars := interpolation.Variables(d.Code)
		refs := make([]any, 0, len(vars))
		for _, v := range vars {
			if v != d.ID {
				refs = append(refs, v)
			}
		}
		rows = append(rows, map[string]any{
			"key":        d.Key().String(),
			"type":       d.Type,
			"id":         d.ID,
			"mod":        d.ModName,
			"file":       d.File,
			"sha":        d.ContentSHA,
			"value_type": d.ValueType.String(),
			"uses":       refs,
		})
	}
	return rows
}

// AddDefinitions links a mod to every definition it provides, and each
// definition to the scripted variables its code reads.
func (gb *GraphBuilder) AddDefinitions(ctx context.Context, defs []*definition.Definition) error {
	if len(defs) == 0 {
		return nil
	}
	session := gb.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.Run(ctx, `
		UNWIND $rows AS row
		MERGE (m:Mod {name: row.mod})
		MERGE (d:Definition {key: row.key})
		SET d.type = row.type, d.id = row.id
		MERGE (m)-[r:DEFINES]->(d)
		SET r.file = row.file, r.sha = row.sha, r.value_type = row.value_type
		WITH d, row
		UNWIND row.uses AS name
		MERGE (v:ScriptedVariable {name: name})
		MERGE (d)-[:USES]->(v)
	`, map[string]any{"rows": definitionRows(defs)})
	if err != nil {
		return fmt.Errorf("add definitions: %w", err)
	}

	log.Info().Int("definitions", len(defs)).Msg("Added definitions to graph")
	return nil
}

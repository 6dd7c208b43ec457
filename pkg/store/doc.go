// Package store persists precompiled templates.
//
// Two Store implementations are provided: Memory for a single process and
// Redis for sharing templates between processes. A Catalog sits on top of a
// Store: Put precompiles and saves, Get loads and revives.
//
// Example usage:
//
//	client := redis.NewClient(cfg.RedisOptions())
//	catalog := store.NewCatalog(store.NewRedis(client, cfg.StorePrefix, logger), engine.New())
//
//	if err := catalog.Put(ctx, "greeting", "Hello {{titlecase name}}"); err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := catalog.Render(ctx, "greeting", map[string]interface{}{"name": "ada lovelace"})
//	// out: "Hello Ada Lovelace"
package store

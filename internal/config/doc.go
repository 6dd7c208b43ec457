// Package config provides configuration management for the template engine.
//
// Configuration is loaded from TEMPLATE_* environment variables and validated
// on load. All configuration options have sensible defaults for development;
// the eval helper stays disabled unless TEMPLATE_EVAL_BACKEND is set.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
package config

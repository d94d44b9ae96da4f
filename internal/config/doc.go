// Package config provides configuration parsing for rewax tools.
//
// The configuration is stored in rewax.yaml. Every field is optional; a
// missing file is not an error for Load, which then returns the defaults.
//
// # Configuration File Structure
//
//	diff:
//	  valueDiffing: false
//	  maxChildCount: 0
//	runtime:
//	  maxRedrawDrain: 16
//	log:
//	  level: info
//	  format: text
//	metrics:
//	  enabled: false
//	  namespace: rewax
//	  subsystem: ""
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rt := rewax.NewRuntime(cfg.RuntimeOptions()...)
package config

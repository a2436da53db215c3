// Package config provides configuration parsing for the listkit CLI.
//
// The configuration is stored in listkit.json in the working directory.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "grid": {
//	    "spanCount": 2,
//	    "width": 80
//	  },
//	  "paging": {
//	    "pageSize": 20,
//	    "initialLoadSize": 60,
//	    "prefetchDistance": 20,
//	    "placeholders": true
//	  },
//	  "serve": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "tick": "1s"
//	  },
//	  "metrics": {
//	    "namespace": "listkit"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Columns:", cfg.Grid.SpanCount)
package config

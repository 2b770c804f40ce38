// Package factory provides a small generic registry used to instantiate
// pluggable components from configuration. A component is described by a type
// string and a map of raw settings; factories decode the settings into typed
// structs and return the concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[sequencing.Sequencer]()
//	reg.Register("lp", func(conf map[string]any) (sequencing.Sequencer, error) {
//	    var c struct{ MaxVariables int `json:"max_variables"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return &sequencing.LPSequencer{MaxVariables: c.MaxVariables}, nil
//	})
//	s, err := reg.Create(factory.ModuleConfig{Type: "lp", Conf: map[string]any{"max_variables": 512}})
package factory

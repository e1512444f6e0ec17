// Package validation provides Laravel-style validation for the inspection
// API's input.
//
// # Basic Usage
//
//	v := validation.Make(map[string]string{
//	    "type":  "app.service",
//	    "param": "logger",
//	}, validation.Rules{
//	    "type":  "required|symbolic",
//	    "param": "required|identifier|max:128",
//	})
//
//	if v.Fails() {
//	    // JSON: {"errors": {"field": ["message1", "message2"]}}
//	}
//
// # Available Rules
//
//   - required     field must be present and non-empty
//   - symbolic     dotted symbolic name, e.g. "app.fileLogger"
//   - identifier   Go-style parameter name
//   - max:n        maximum n UTF-8 characters
//   - in:a,b,c     value must be one of the list
//
// # Bindings tables
//
//	if errs := validation.Bindings(table); errs.Has() {
//	    res.ValidationError(errs)
//	}
package validation

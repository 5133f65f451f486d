// Command cmdletgen generates static injection plans for cmdlet types.
//
// A plan built with the di package is plain Go: one di.Field per injectable
// member, each carrying a typed setter. cmdletgen writes that boilerplate from
// a small JSON spec, so the plan stays explicit and compile-checked while the
// member list lives next to the cmdlet.
//
// Spec format (*.inject.json)
//
//	{
//	  "package": "greet",
//	  "cmdletType": "Greeter",
//	  "planFunc": "GreeterPlan",
//	  "imports": { "zap": "go.uber.org/zap" },
//	  "members": [
//	    { "field": "Log",    "type": "*zap.Logger" },
//	    { "field": "Store",  "type": "Store",  "name": "cache" },
//	    { "field": "Prefix", "type": "string", "name": "greeting.prefix" }
//	  ]
//	}
//
// planFunc defaults to <cmdletType>Plan. A member without "name" resolves by
// type only; "name": "" requests the empty name explicitly.
//
// Package qualifiers used in member types are resolved against the imports of
// the owner file (the file carrying the go:generate directive), then against
// spec.imports. Unused owner imports are not copied.
//
// Typical go:generate usage
//
//	//go:generate go run ../../cmd/cmdletgen -spec ./greeter.inject.json -out ./greeter_plan.gen.go
//
// Exit codes: 0 on success, 1 when the spec is invalid or generation fails,
// 2 on usage errors.
package main

// Package cel provides a CEL (Common Expression Language) evaluator for the eval helper.
//
// CEL is a non-Turing complete expression language without side effects, which makes it
// a safe backend for expressions that come from template source. Evaluation is bounded by
// a cost limit and by the context deadline.
//
// Example usage:
//
//	evaluator, err := cel.NewEvaluator(cel.WithCostLimit(5000))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	vars := map[string]interface{}{
//	    "root": map[string]interface{}{"score": 0.95},
//	}
//
//	result, err := evaluator.Evaluate(ctx, "root.score > 0.8", vars)
//	// result: true
//
// Supported operations:
//   - Comparisons: ==, !=, <, <=, >, >=
//   - Boolean logic: &&, ||, !
//   - String operations: contains, startsWith, endsWith, matches
//   - Arithmetic: +, -, *, /, %
//   - List operations: in, size
//   - Map access: root.field, root["field"]
package cel

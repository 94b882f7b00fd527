// Package formbuilder defines the payload schema of the FormBuilder
// aggregates API and validates it at the boundary.
//
// The remote endpoint answers GET /api/v1/templates/aggregates with
//
//	{"templates": [{"id": 1, "title": "...", "author": "...",
//	  "questions": [{"text": "...", "type": "integer", "answerCount": 3,
//	    "aggregation": {"average": 5, "min": 1, "max": 9}}]}]}
//
// Every decoded value is checked before it reaches the reconciler, so
// downstream code never sees a question without text or a template
// without an id.
package formbuilder

/*
Package dsl builds blueprint question sets in Go instead of a question file.

It is useful for embedding kopye, for generated blueprints, and for tests:

	b := dsl.New()
	b.Add("name").Text("Project name")
	b.Add("ci").Confirm("Add CI?")
	b.Add("provider").Select("CI provider", "github", "gitlab").When("ci:true")
	qs, err := b.Build()

Questions default to Text. Declaration order is the order of the first Add call per id.
*/
package dsl

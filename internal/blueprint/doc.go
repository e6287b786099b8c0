/*
Package blueprint loads the files that describe blueprints: the registry at the root of a
blueprint source and the question file inside each blueprint directory.

Both files may be written in TOML or YAML. Top-level keys keep their declaration order,
which is the order questions are presented in when they do not depend on each other.

	[name]
	type = "Text"
	help = "Project name"

	[ci_provider]
	type = "Select"
	help = "CI provider"
	choices = ["github", "gitlab"]
	depends_on = "ci:true"
*/
package blueprint

/*
Package kopye materializes project blueprints: directory trees whose paths and marked files are
templates, driven by a declarative set of questions.

A blueprint source is a local directory or a git reference (gh:owner/repo, gl:owner/repo,
git@host:owner/repo.git, git+https://...) holding a registry file that names each blueprint.
A blueprint directory carries a question file (blueprint.toml or blueprint.yaml) whose
questions may depend on earlier answers.

# Pipeline

Copy runs one blueprint end to end:

 1. Questions are ordered so that every question comes after the ones it depends on.
    Questions without dependencies keep their declaration order.
 2. Each visible question is asked once. A question whose dependency does not hold is skipped.
 3. The answers become the template context. Every path segment is rendered; a segment that
    renders empty drops the entry and everything below it. Files ending in ".tera" also have
    their content rendered and lose the suffix.
 4. The staged tree is previewed and the user confirms.
 5. Entries are written inside a transaction. Any failure removes what was created, newest
    first.

# Usage

	eng := kopye.New(
		kopye.WithLogger(logger),
		kopye.WithPreviewer(tui.NewPreviewer(os.Stdout, false)),
	)
	outcome, err := eng.Copy(ctx, kopye.CopyRequest{
		Source:      "gh:acme/blueprints",
		Blueprint:   "rust",
		Destination: "./hello",
	})

Answers of committed runs can be stored with WithAnswerStore and replayed later by setting
CopyRequest.Replay to a run id or to "last:<blueprint>".
*/
package kopye

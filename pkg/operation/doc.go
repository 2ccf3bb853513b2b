/*
Package operation applies insertion rules to files on disk.

	+-------------+
	|   Config    |
	|   (Rules)   |
	+------+------+
	       | Expand
	+------+------+
	|   Targets   |
	| (per file)  |
	+------+------+
	       | Runner
	+------+------+
	|   insert    |
	|  + file IO  |
	+-------------+

🔄 Flow:
1. Expand resolves file patterns and groups rules by file
2. The runner reads each file once and applies its rules in order
3. Files that gained lines are written back atomically; others are not touched
4. Each result is reported to the console logger

⚡ Concurrency:
Within one run a path belongs to exactly one target, so async workers never
write the same file. Nothing guards against two separate invocations editing
the same file at once; callers serialize those.

🚦 Outcomes:
- inserted: at least one line was added
- unchanged: an anchor was found and every line was already present
- anchor not found: no rule's anchor matched; the file is left as is
- failed: the file could not be read or written (see file.AccessError)

🔍 Example:

	files := file.NewManager(cfg.Dir())
	targets, err := operation.Expand(ctx, files, cfg.Rules)
	runner := operation.NewRunner(operation.Options{Files: files})
	results, err := runner.Run(ctx, targets)
*/
package operation

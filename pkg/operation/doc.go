/*
Package operation runs a single edit over a directory tree.

	+-------------+
	|   Editor    |
	|    (Run)    |
	+------+------+
	       |
	+------+------+
	|   Walker    |
	| (Traverse)  |
	+------+------+
	       |
	+------+------+      +-------------+
	|  Replacer   |----->|   Logger    |
	| (Transform) |      | (Audit log) |
	+-------------+      +-------------+

🎯 Purpose:
- Turns a validated config into a replacer, a filter and a walker
- Writes the start banner and the final tally to the audit log
- Reports the run summary so the caller can pick an exit code

🔄 Flow:
1. Log the banner (directory, search, replacement, mode)
2. Walk the tree; every file is read, replaced and written back
3. Log "Finished: ..." once every scheduled file is done
4. Return the summary

⚡ Ordering:
Files are processed concurrently, so UPDATED, SKIPPED and ERROR lines for
different files appear in completion order, not in traversal order. The
banner always comes first and the Finished line always comes last.

🔍 Example:

	editor, err := operation.New(operation.Options{Config: cfg, Logger: logger})
	summary, err := editor.Run(ctx)
*/
package operation

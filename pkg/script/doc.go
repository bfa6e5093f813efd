// Package script loads declarative edit scripts and turns them into
// [xmlmerge.Action] values.
//
// Scripts are TOML documents. Top-level keys configure the output writer and
// each [[action]] table describes one edit, applied in file order:
//
//	indent = 2
//	declaration = true
//	sort_attributes = false
//
//	[[action]]
//	op = "append"
//	path = "/project/component[@name='NewModuleRootManager']"
//	tag = "orderEntry"
//	attrs = { type = "sourceFolder", forTests = "false" }
//
//	[[action]]
//	op = "set-attr"
//	path = "/project"
//	key = "version"
//	value = "4"
//
// Supported operations:
//
//	append       path, tag, [attrs], [text]   add a child to the first match
//	remove       path                          remove every match
//	set-attr     path, key, value              set an attribute on the first match
//	remove-attr  path, key                     remove an attribute from the first match
//	set-text     path, text                    replace the text of the first match
//	rename       path, tag                     rename the first match
//	replace      find, replace                 substitute raw text in the document
//
// Every action accepts name (used in error messages) and optional (a path
// matching nothing is skipped instead of failing the transform).
package script

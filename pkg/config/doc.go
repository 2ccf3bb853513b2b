/*
Package config loads and validates ensurelines rules files.

	            +-------------+
	            |   Config    |
	            |   (Rules)   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Reads a rules file and picks a parser by extension
- Validates every rule before any file is touched
- Resolves the base directory for relative file patterns

📄 Rule shape (YAML):

	rules:
	  - files: ["web/src/lib/graphql.ts"]
	    anchor: "export type Profile = {"
	    lines:
	      - "  bio?: Maybe<Scalars['String']>;"
	backup: true

📄 Rule shape (HCL), with environment variables under env:

	rule {
	  files  = [env.TARGET]
	  anchor = "export type Profile = {"
	  lines  = ["  bio?: Maybe<Scalars['String']>;"]
	}

Lines are inserted in reverse order directly below the anchor; see package insert.
*/
package config

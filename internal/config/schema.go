package config

// SchemaJSON is the JSON Schema for reports.yaml written by `codereport init`.
const SchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "codereport reports",
  "type": "object",
  "required": ["version", "entries"],
  "properties": {
    "version": { "const": 1 },
    "entries": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "path", "range", "tag", "message", "author", "created_at", "status"],
        "properties": {
          "id": { "type": "string", "pattern": "^CR-[0-9]{6}$" },
          "path": { "type": "string" },
          "range": {
            "type": "object",
            "required": ["start", "end"],
            "properties": {
              "start": { "type": "integer", "minimum": 1 },
              "end": { "type": "integer", "minimum": 1 }
            }
          },
          "tag": { "enum": ["todo", "refactor", "buggy", "critical"] },
          "message": { "type": "string" },
          "author": {
            "type": "object",
            "properties": {
              "git": { "type": ["string", "null"] },
              "codeowner": { "type": ["string", "null"] }
            }
          },
          "created_at": { "type": "string", "format": "date" },
          "expires_at": { "type": ["string", "null"], "format": "date" },
          "status": { "enum": ["open", "resolved"] }
        }
      }
    }
  }
}
`

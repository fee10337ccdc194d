package catalogs

import "github.com/santhosh-tekuri/jsonschema/v5"

var (
	hullSchema = jsonschema.MustCompileString("shiplist/hulls.schema.json", `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "cargo", "engines"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "name": {"type": "string", "minLength": 1, "maxLength": 30},
      "cargo": {"type": "integer", "minimum": 0, "maximum": 10000},
      "engines": {"type": "integer", "minimum": 0, "maximum": 10},
      "beams": {"type": "integer", "minimum": 0, "maximum": 20},
      "launchers": {"type": "integer", "minimum": 0, "maximum": 20},
      "bays": {"type": "integer", "minimum": 0, "maximum": 20},
      "tech": {"type": "integer", "minimum": 1, "maximum": 10}
    }
  }
}`)

	engineSchema = jsonschema.MustCompileString("shiplist/engines.schema.json", `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "tech"],
    "properties": {
      "id": {"type": "integer", "minimum": 1, "maximum": 9},
      "name": {"type": "string", "minLength": 1},
      "tech": {"type": "integer", "minimum": 1, "maximum": 10}
    }
  }
}`)

	beamSchema = jsonschema.MustCompileString("shiplist/beams.schema.json", `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "mass", "tech"],
    "properties": {
      "id": {"type": "integer", "minimum": 1, "maximum": 10},
      "name": {"type": "string", "minLength": 1},
      "mass": {"type": "integer", "minimum": 0, "maximum": 10000},
      "tech": {"type": "integer", "minimum": 1, "maximum": 10}
    }
  }
}`)

	torpedoSchema = jsonschema.MustCompileString("shiplist/torpedoes.schema.json", `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "launcher_mass", "tech"],
    "properties": {
      "id": {"type": "integer", "minimum": 1, "maximum": 10},
      "name": {"type": "string", "minLength": 1},
      "launcher_mass": {"type": "integer", "minimum": 0, "maximum": 10000},
      "tech": {"type": "integer", "minimum": 1, "maximum": 10}
    }
  }
}`)
)

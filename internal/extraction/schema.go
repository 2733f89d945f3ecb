package extraction

// JSON schema sent as the structured-output constraint. Mirrors
// profile.PatientProfile; every property is required with null standing in
// for absent, which is what strict schema decoding expects.
const profileSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["demographics", "conditions", "diagnosisDate", "stage", "biomarkers", "priorTherapies", "performanceStatus", "location", "notes", "ctgovQuery"],
  "properties": {
    "demographics": {
      "type": "object",
      "additionalProperties": false,
      "required": ["age", "sex"],
      "properties": {
        "age": {"type": ["integer", "null"], "minimum": 0},
        "sex": {"type": ["string", "null"], "enum": ["male", "female", "other", null]}
      }
    },
    "conditions": {"type": "array", "items": {"type": "string"}},
    "diagnosisDate": {"type": ["string", "null"]},
    "stage": {"type": ["string", "null"]},
    "biomarkers": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["name", "value"],
        "properties": {
          "name": {"type": "string"},
          "value": {"type": ["string", "null"]}
        }
      }
    },
    "priorTherapies": {"type": "array", "items": {"type": "string"}},
    "performanceStatus": {"type": ["string", "null"]},
    "location": {
      "type": ["object", "null"],
      "additionalProperties": false,
      "required": ["city", "state", "country", "postalCode"],
      "properties": {
        "city": {"type": ["string", "null"]},
        "state": {"type": ["string", "null"]},
        "country": {"type": ["string", "null"]},
        "postalCode": {"type": ["string", "null"]}
      }
    },
    "notes": {"type": ["string", "null"]},
    "ctgovQuery": {
      "type": "object",
      "additionalProperties": false,
      "required": ["conditionQuery", "termQuery"],
      "properties": {
        "conditionQuery": {"type": ["string", "null"]},
        "termQuery": {"type": ["string", "null"]}
      }
    }
  }
}`

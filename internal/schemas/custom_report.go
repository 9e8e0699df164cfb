package schemas

// customReportSchema is the structural contract for POST /api/reports/custom
// bodies and saved report definitions. Metric names are unconstrained strings
// (unknown names are skipped downstream); filter keys and the group-by field
// are checked against their closed sets downstream as well — the schema only
// rejects shapes that could never be a report.
const customReportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "CustomReportDefinition",
  "type": "object",
  "required": ["metrics"],
  "additionalProperties": false,
  "properties": {
    "name": {
      "type": "string",
      "maxLength": 120
    },
    "metrics": {
      "type": "array",
      "minItems": 1,
      "items": { "type": "string", "minLength": 1 }
    },
    "filters": {
      "type": "object",
      "additionalProperties": { "type": "string" }
    },
    "groupBy": {
      "type": "string"
    },
    "dateRange": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "period": { "type": "string", "enum": ["7d", "30d", "90d", "1y", "custom"] },
        "startDate": { "type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$" },
        "endDate": { "type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$" }
      }
    }
  }
}`

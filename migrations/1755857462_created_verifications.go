package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_verifications",
			"name": "verifications",
			"type": "base",
			"system": false,
			"fields": [
				{
					"id": "text_status",
					"name": "status",
					"type": "text",
					"required": true,
					"presentable": true
				},
				{
					"id": "bool_verified",
					"name": "verified",
					"type": "bool"
				},
				{
					"id": "number_confidence",
					"name": "confidence",
					"type": "number",
					"onlyInt": true,
					"min": 0,
					"max": 100
				},
				{
					"id": "text_reason",
					"name": "reason",
					"type": "text"
				},
				{
					"id": "json_claim",
					"name": "claim",
					"type": "json"
				},
				{
					"id": "json_matched",
					"name": "matched_fields",
					"type": "json"
				},
				{
					"id": "json_unmatched",
					"name": "unmatched_fields",
					"type": "json"
				},
				{
					"id": "text_official",
					"name": "official_ticket_id",
					"type": "text"
				},
				{
					"id": "text_system",
					"name": "ticketing_system",
					"type": "text"
				},
				{
					"id": "autodate_created",
					"name": "created",
					"type": "autodate",
					"onCreate": true
				},
				{
					"id": "autodate_updated",
					"name": "updated",
					"type": "autodate",
					"onCreate": true,
					"onUpdate": true
				}
			],
			"indexes": [
				"CREATE INDEX idx_verifications_status ON verifications (status)"
			],
			"listRule": null,
			"viewRule": null,
			"createRule": null,
			"updateRule": null,
			"deleteRule": null
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("verifications")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}

package validators

import "go.mongodb.org/mongo-driver/bson"

var CerimonialValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"requester",
			"title",
			"date",
			"period",
			"location",
			"status",
			"tasks",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"requester": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"time": bson.M{
				"bsonType": "string",
				"pattern":  `^([01]\d|2[0-3]):[0-5]\d$`,
			},

			"period": bson.M{
				"enum": []string{"matutino", "vespertino", "noturno"},
			},

			"location": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"extra_items": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"notes": bson.M{
				"bsonType":  "string",
				"maxLength": 1000,
			},

			"status": bson.M{
				"enum": []string{"aberta", "em_andamento", "concluida"},
			},

			"tasks": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"name", "sector", "done"},
					"properties": bson.M{
						"name": bson.M{
							"bsonType": "string",
						},
						"sector": bson.M{
							"bsonType": "string",
						},
						"done": bson.M{
							"bsonType": "bool",
						},
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

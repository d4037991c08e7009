package validators

import "go.mongodb.org/mongo-driver/bson"

var MarketingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"requester",
			"sector_course",
			"phone",
			"email",
			"demand",
			"title",
			"date",
			"location",
			"status",
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

			"sector_course": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"phone": bson.M{
				"bsonType":  "string",
				"minLength": 8,
				"maxLength": 20,
			},

			"email": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"coordinator": bson.M{
				"bsonType": "bool",
			},

			"demand": bson.M{
				"enum": []string{"acao", "campanha", "evento"},
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

			"location": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"approvals": bson.M{
				"bsonType": "object",
			},

			"status": bson.M{
				"enum": []string{"aberta", "pendente", "em_andamento", "concluida", "rejeitada"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"completed_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

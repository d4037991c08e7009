package validators

import "go.mongodb.org/mongo-driver/bson"

var EquipmentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"tag",
			"name",
			"type",
			"block",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"tag": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 40,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"type": bson.M{
				"enum": []string{"datashow", "notebook", "microfone", "caixa_de_som"},
			},

			"block": bson.M{
				"enum": []string{"B", "C", "D"},
			},

			"status": bson.M{
				"enum": []string{"disponivel", "manutencao"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

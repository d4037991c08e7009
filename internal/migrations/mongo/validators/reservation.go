package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"date",
			"time",
			"period",
			"block",
			"requester",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"time": bson.M{
				"bsonType": "string",
				"pattern":  `^([01]\d|2[0-3]):(00|30)$`,
			},

			"period": bson.M{
				"enum": []string{"matutino", "vespertino", "noturno"},
			},

			"block": bson.M{
				"enum": []string{"B", "C", "D"},
			},

			"room_id": bson.M{
				"bsonType":  "string",
				"maxLength": 40,
			},

			"equipment_id": bson.M{
				"bsonType":  "string",
				"maxLength": 24,
			},

			"usage_location": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"requester": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"status": bson.M{
				"enum": []string{"pendente", "aprovado", "cancelado"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"cancelled_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

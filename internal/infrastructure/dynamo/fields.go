package dynamo

// DynamoDB attribute names of a todo item.
const (
	fieldID          = "id"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldCreated     = "created"
)

const (
	// listLimit caps a single List scan.
	listLimit = 20
	// getLimit is one more than the number of items a key lookup may legally return.
	getLimit = 2
)

package models

// FieldType is a rendering hint for a described resource attribute
type FieldType string

// Supported field types
const (
	FieldName      FieldType = "name"
	FieldARN       FieldType = "arn"
	FieldDate      FieldType = "date"
	FieldShortText FieldType = "shortText"
	FieldLongText  FieldType = "longText"
	FieldJSON      FieldType = "json"
	FieldNumber    FieldType = "number"
	FieldLogGroup  FieldType = "logGroup"
)

// ResourceField is one descriptive attribute of an AWS resource
type ResourceField struct {
	Field string    `json:"field"`
	Value string    `json:"value"`
	Type  FieldType `json:"type"`
}

// ServiceResourceArnTuple is produced while converting stack resources into
// a Focus. It is never persisted.
type ServiceResourceArnTuple struct {
	ServiceID    string
	ResourceType string
	ARN          string
}

// StackResource is a summary row of a CloudFormation stack resource
type StackResource struct {
	LogicalID    string // Logical id inside the template
	PhysicalID   string // Physical id, service specific (name, URL, UUID or ARN)
	ResourceType string // e.g. AWS::SQS::Queue
	Status       string // e.g. CREATE_COMPLETE
}

// StackInfo is a summary of a non-deleted CloudFormation stack
type StackInfo struct {
	StackName string
	StackID   string // The stack ARN
	Status    string
}

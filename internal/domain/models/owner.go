package models

// OwnerKind discriminates the two possible owners of a question list.
type OwnerKind string

const (
	OwnerTopic    OwnerKind = "topic"
	OwnerSubTopic OwnerKind = "subtopic"
)

// Owner is a tagged reference to the record whose question list an operation
// mutates. A question belongs to exactly one owner; create, delete and
// reorder all branch once on Kind instead of re-checking an optional
// sub-topic id at every call site.
type Owner struct {
	Kind       OwnerKind
	TopicID    string
	SubTopicID string // set only when Kind == OwnerSubTopic
}

// TopicOwner references a topic's direct question list.
func TopicOwner(topicID string) Owner {
	return Owner{Kind: OwnerTopic, TopicID: topicID}
}

// SubTopicOwner references a sub-topic's question list. The topic id is
// retained for route symmetry but the sub-topic list is the one mutated.
func SubTopicOwner(topicID, subTopicID string) Owner {
	return Owner{Kind: OwnerSubTopic, TopicID: topicID, SubTopicID: subTopicID}
}

// OwnerFromPath builds an Owner from route parameters, where an empty or
// literal "null" sub-topic id means the topic's direct list.
func OwnerFromPath(topicID, subTopicID string) Owner {
	if subTopicID == "" || subTopicID == "null" {
		return TopicOwner(topicID)
	}
	return SubTopicOwner(topicID, subTopicID)
}

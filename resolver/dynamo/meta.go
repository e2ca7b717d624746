package dynamo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/djgrant/piq/facet"
)

// Client is the interface for the DynamoDB operations the resolver uses.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Meta resolves the metadata facet of an item from a DynamoDB table.
//
// Table schema:
//   - Partition key: the item identifier (string), attribute name keyAttr
//   - Every other attribute on the item is a metadata field
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name piq-meta \
//	  --attribute-definitions AttributeName=id,AttributeType=S \
//	  --key-schema AttributeName=id,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
type Meta struct {
	client    Client
	tableName string
	keyAttr   string
	fields    []string
}

// MetaOption configures a Meta resolver.
type MetaOption func(*Meta)

// WithKeyAttribute sets the partition key attribute name. Default "id".
func WithKeyAttribute(name string) MetaOption {
	return func(m *Meta) { m.keyAttr = name }
}

// WithFields declares the resolver's field set. Undeclared resolvers
// return whatever attributes the table row carries.
func WithFields(fields ...string) MetaOption {
	return func(m *Meta) { m.fields = fields }
}

// NewMeta creates a DynamoDB Meta resolver for the given table.
func NewMeta(client Client, tableName string, optFns ...MetaOption) *Meta {
	m := &Meta{client: client, tableName: tableName, keyAttr: "id"}
	for _, fn := range optFns {
		fn(m)
	}
	return m
}

// MetaFields returns the declared field set, or nil when undeclared.
func (m *Meta) MetaFields() []string { return m.fields }

// ResolveMeta fetches the item's row and returns the requested fields, or
// all fields when fields is nil. A missing row yields an empty document, the
// same way an item without frontmatter does.
func (m *Meta) ResolveMeta(ctx context.Context, id string, fields []string) (facet.Document, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(m.tableName),
		Key: map[string]types.AttributeValue{
			m.keyAttr: &types.AttributeValueMemberS{Value: id},
		},
	}
	if want := m.requested(fields); want != nil {
		names := make(map[string]string, len(want))
		exprs := make([]string, 0, len(want))
		for i, f := range want {
			placeholder := fmt.Sprintf("#f%d", i)
			names[placeholder] = f
			exprs = append(exprs, placeholder)
		}
		input.ProjectionExpression = aws.String(strings.Join(exprs, ", "))
		input.ExpressionAttributeNames = names
	}

	resp, err := m.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("dynamodb get %q: %w", id, err)
	}
	if resp.Item == nil {
		return facet.Document{}, nil
	}

	doc := make(facet.Document, len(resp.Item))
	for name, attr := range resp.Item {
		if name == m.keyAttr {
			continue
		}
		v, err := fromAttribute(attr)
		if err != nil {
			return nil, facet.NewMalformedError(id, "meta", fmt.Sprintf("attribute %q", name), err)
		}
		doc[name] = v
	}
	return doc, nil
}

// requested merges the per-call field list with the declared set. nil means
// no projection at all.
func (m *Meta) requested(fields []string) []string {
	if fields != nil {
		return fields
	}
	return m.fields
}

// fromAttribute converts a DynamoDB attribute value into a facet value.
// Numbers decode as int64 when integral and float64 otherwise, keeping
// them comparable with frontmatter-sourced documents.
func fromAttribute(attr types.AttributeValue) (any, error) {
	switch v := attr.(type) {
	case *types.AttributeValueMemberS:
		return v.Value, nil
	case *types.AttributeValueMemberN:
		if i, err := strconv.ParseInt(v.Value, 10, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(v.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse number %q: %w", v.Value, err)
		}
		return f, nil
	case *types.AttributeValueMemberBOOL:
		return v.Value, nil
	case *types.AttributeValueMemberNULL:
		return nil, nil
	case *types.AttributeValueMemberL:
		list := make([]any, 0, len(v.Value))
		for _, el := range v.Value {
			decoded, err := fromAttribute(el)
			if err != nil {
				return nil, err
			}
			list = append(list, decoded)
		}
		return list, nil
	case *types.AttributeValueMemberM:
		doc := make(map[string]any, len(v.Value))
		for name, el := range v.Value {
			decoded, err := fromAttribute(el)
			if err != nil {
				return nil, err
			}
			doc[name] = decoded
		}
		return doc, nil
	case *types.AttributeValueMemberSS:
		list := make([]any, 0, len(v.Value))
		for _, s := range v.Value {
			list = append(list, s)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unsupported attribute type %T", attr)
	}
}

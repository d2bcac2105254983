package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Dynamo implements Store on a single DynamoDB table with a composite key:
// "collection" (partition) + "id" (sort). Document fields live next to the
// key attributes, so condition expressions on "id" double as existence
// checks for the whole document.
type Dynamo struct {
	client *dynamodb.Client
	table  string
}

// NewDynamo creates a Dynamo store on the given table.
func NewDynamo(client *dynamodb.Client, table string) *Dynamo {
	return &Dynamo{client: client, table: table}
}

func (d *Dynamo) key(collection, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"collection": &types.AttributeValueMemberS{Value: collection},
		"id":         &types.AttributeValueMemberS{Value: id},
	}
}

func (d *Dynamo) GetByID(ctx context.Context, collection, id string) (Document, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.table),
		Key:            d.key(collection, id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}
	return unmarshalDoc(out.Item)
}

func (d *Dynamo) Put(ctx context.Context, collection, id string, doc Document) error {
	item, err := d.marshalItem(collection, id, doc)
	if err != nil {
		return err
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

func (d *Dynamo) PutIfAbsent(ctx context.Context, collection, id string, doc Document) error {
	item, err := d.marshalItem(collection, id, doc)
	if err != nil {
		return err
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("put-if-absent %s/%s: %w", collection, id, err)
	}
	return nil
}

func (d *Dynamo) Update(ctx context.Context, collection, id string, fields Document) error {
	setClauses := make([]string, 0, len(fields))
	exprNames := map[string]string{}
	exprValues := map[string]types.AttributeValue{}

	i := 0
	for k, v := range fields {
		if k == "collection" || k == "id" {
			continue
		}
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal field %s: %w", k, err)
		}
		nameKey := fmt.Sprintf("#f%d", i)
		valueKey := fmt.Sprintf(":v%d", i)
		exprNames[nameKey] = k
		exprValues[valueKey] = av
		setClauses = append(setClauses, nameKey+" = "+valueKey)
		i++
	}
	if len(setClauses) == 0 {
		// Nothing to merge; still report absence consistently.
		if _, err := d.GetByID(ctx, collection, id); err != nil {
			return err
		}
		return nil
	}

	updateExpr := "SET " + setClauses[0]
	for _, c := range setClauses[1:] {
		updateExpr += ", " + c
	}

	_, err := d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(d.table),
		Key:                       d.key(collection, id),
		UpdateExpression:          aws.String(updateExpr),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrNotFound
		}
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (d *Dynamo) Delete(ctx context.Context, collection, id string) error {
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(d.table),
		Key:                 d.key(collection, id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrNotFound
		}
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (d *Dynamo) QueryEquals(ctx context.Context, collection, field string, value any) ([]Document, error) {
	av, err := attributevalue.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal query value: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(d.table),
		KeyConditionExpression: aws.String("#c = :c"),
		FilterExpression:       aws.String("#f = :v"),
		ExpressionAttributeNames: map[string]string{
			"#c": "collection",
			"#f": field,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: collection},
			":v": av,
		},
	}
	return d.queryAll(ctx, input)
}

func (d *Dynamo) List(ctx context.Context, collection string) ([]Document, error) {
	input := &dynamodb.QueryInput{
		TableName:                aws.String(d.table),
		KeyConditionExpression:   aws.String("#c = :c"),
		ExpressionAttributeNames: map[string]string{"#c": "collection"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: collection},
		},
	}
	return d.queryAll(ctx, input)
}

func (d *Dynamo) queryAll(ctx context.Context, input *dynamodb.QueryInput) ([]Document, error) {
	var docs []Document
	paginator := dynamodb.NewQueryPaginator(d.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", d.table, err)
		}
		for _, item := range page.Items {
			doc, err := unmarshalDoc(item)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (d *Dynamo) SetMapEntry(ctx context.Context, collection, id, mapField, key string, value any, mustExist bool) error {
	av, err := attributevalue.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal map value: %w", err)
	}

	condition := "attribute_exists(id)"
	if mustExist {
		condition += " AND attribute_exists(#m.#k)"
	}

	_, err = d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(d.table),
		Key:                 d.key(collection, id),
		UpdateExpression:    aws.String("SET #m.#k = :v"),
		ConditionExpression: aws.String(condition),
		ExpressionAttributeNames: map[string]string{
			"#m": mapField,
			"#k": key,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": av},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			if mustExist {
				return ErrConditionFailed
			}
			return ErrNotFound
		}
		return fmt.Errorf("set %s/%s %s.%s: %w", collection, id, mapField, key, err)
	}
	return nil
}

func (d *Dynamo) RemoveMapEntry(ctx context.Context, collection, id, mapField, key string) error {
	_, err := d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(d.table),
		Key:                 d.key(collection, id),
		UpdateExpression:    aws.String("REMOVE #m.#k"),
		ConditionExpression: aws.String("attribute_exists(id) AND attribute_exists(#m.#k)"),
		ExpressionAttributeNames: map[string]string{
			"#m": mapField,
			"#k": key,
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConditionFailed
		}
		return fmt.Errorf("remove %s/%s %s.%s: %w", collection, id, mapField, key, err)
	}
	return nil
}

func (d *Dynamo) marshalItem(collection, id string, doc Document) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(map[string]any(doc))
	if err != nil {
		return nil, fmt.Errorf("marshal %s/%s: %w", collection, id, err)
	}
	item["collection"] = &types.AttributeValueMemberS{Value: collection}
	item["id"] = &types.AttributeValueMemberS{Value: id}
	return item, nil
}

func unmarshalDoc(item map[string]types.AttributeValue) (Document, error) {
	var doc Document
	if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	delete(doc, "collection")
	return doc, nil
}

package lib

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/r3labs/diff/v2"
)

var dynamoDBClient *dynamodb.Client
var dynamoDBClientLock sync.Mutex

func DynamoDBClient() *dynamodb.Client {
	dynamoDBClientLock.Lock()
	defer dynamoDBClientLock.Unlock()
	if dynamoDBClient == nil {
		dynamoDBClient = dynamodb.NewFromConfig(*Session())
	}
	return dynamoDBClient
}

func DynamoDBPutItem(ctx context.Context, table string, item map[string]ddbtypes.AttributeValue) error {
	_, err := DynamoDBClient().PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		Logger.Println("error:", err)
		return err
	}
	return nil
}

// DynamoDBScan pages through a table calling fn for every item. A limit of 0
// scans the whole table.
func DynamoDBScan(ctx context.Context, table string, limit int, fn func(map[string]ddbtypes.AttributeValue) error) error {
	var start map[string]ddbtypes.AttributeValue
	count := 0
	for {
		out, err := DynamoDBClient().Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(table),
			ExclusiveStartKey: start,
			Limit:             aws.Int32(1000),
		})
		if err != nil {
			Logger.Println("error:", err)
			return err
		}
		for _, item := range out.Items {
			if limit != 0 && count >= limit {
				return nil
			}
			count++
			err := fn(item)
			if err != nil {
				return err
			}
		}
		if out.LastEvaluatedKey == nil {
			return nil
		}
		start = out.LastEvaluatedKey
	}
}

func dynamoDBTableAttrShortcut(s string) string {
	s2, ok := map[string]string{
		"read":   "ProvisionedThroughput.ReadCapacityUnits",
		"write":  "ProvisionedThroughput.WriteCapacityUnits",
		"stream": "StreamSpecification.StreamViewType",
		"kms":    "SSESpecification.KMSMasterKeyId",
	}[s]
	if ok {
		return s2
	}
	return s
}

// DynamoDBEnsureInput builds a CreateTableInput from keys like "film_id:s:hash"
// and attrs like "read=5" or "Tags.0.Key=app".
func DynamoDBEnsureInput(name string, keys []string, attrs []string) (*dynamodb.CreateTableInput, error) {
	input := &dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: ddbtypes.BillingModePayPerRequest,
	}

	if len(keys) == 0 {
		err := fmt.Errorf("at least one key is required: %s", name)
		Logger.Println("error:", err)
		return nil, err
	}
	for _, key := range keys {
		attrName, attrType, keyType, err := SplitTwice(key, ":")
		if err != nil {
			Logger.Println("error:", err)
			return nil, err
		}
		input.KeySchema = append(input.KeySchema, ddbtypes.KeySchemaElement{
			AttributeName: aws.String(attrName),
			KeyType:       ddbtypes.KeyType(strings.ToUpper(keyType)),
		})
		input.AttributeDefinitions = append(input.AttributeDefinitions, ddbtypes.AttributeDefinition{
			AttributeName: aws.String(attrName),
			AttributeType: ddbtypes.ScalarAttributeType(strings.ToUpper(attrType)),
		})
	}

	for _, line := range attrs {
		attr, value, err := splitOnce(line, "=")
		if err != nil {
			Logger.Println("error:", err)
			return nil, err
		}
		attr = dynamoDBTableAttrShortcut(attr)
		head, tail, err := splitOnce(attr, ".")
		if err != nil {
			Logger.Println("error:", err)
			return nil, err
		}

		switch head {

		case "SSESpecification":
			switch tail {
			case "KMSMasterKeyId":
				input.SSESpecification = &ddbtypes.SSESpecification{
					Enabled:        aws.Bool(true),
					KMSMasterKeyId: aws.String(value),
					SSEType:        ddbtypes.SSETypeKms,
				}
			default:
				err := fmt.Errorf("unknown attr: %s", line)
				Logger.Println("error:", err)
				return nil, err
			}

		case "ProvisionedThroughput":
			units, err := strconv.Atoi(value)
			if err != nil {
				Logger.Println("error:", err)
				return nil, err
			}
			input.BillingMode = ddbtypes.BillingModeProvisioned
			if input.ProvisionedThroughput == nil {
				input.ProvisionedThroughput = &ddbtypes.ProvisionedThroughput{}
			}
			switch tail {
			case "ReadCapacityUnits":
				input.ProvisionedThroughput.ReadCapacityUnits = aws.Int64(int64(units))
			case "WriteCapacityUnits":
				input.ProvisionedThroughput.WriteCapacityUnits = aws.Int64(int64(units))
			default:
				err := fmt.Errorf("unknown attr: %s", line)
				Logger.Println("error:", err)
				return nil, err
			}

		case "StreamSpecification":
			switch tail {
			case "StreamViewType":
				input.StreamSpecification = &ddbtypes.StreamSpecification{
					StreamEnabled:  aws.Bool(true),
					StreamViewType: ddbtypes.StreamViewType(strings.ToUpper(value)),
				}
			default:
				err := fmt.Errorf("unknown attr: %s", line)
				Logger.Println("error:", err)
				return nil, err
			}

		case "Tags":
			index, field, err := splitOnce(tail, ".")
			if err != nil {
				Logger.Println("error:", err)
				return nil, err
			}
			i, err := strconv.Atoi(index)
			if err != nil {
				Logger.Println("error:", err)
				return nil, err
			}
			switch len(input.Tags) {
			case i:
				input.Tags = append(input.Tags, ddbtypes.Tag{})
			case i + 1:
			default:
				err := fmt.Errorf("attrs with indices must be in ascending order: %s", line)
				Logger.Println("error:", err)
				return nil, err
			}
			switch field {
			case "Key":
				input.Tags[i].Key = aws.String(value)
			case "Value":
				input.Tags[i].Value = aws.String(value)
			default:
				err := fmt.Errorf("unknown attr: %s", line)
				Logger.Println("error:", err)
				return nil, err
			}

		default:
			err := fmt.Errorf("unknown attr: %s", line)
			Logger.Println("error:", err)
			return nil, err
		}
	}

	return input, nil
}

func dynamoDBKeys(schema []ddbtypes.KeySchemaElement, defs []ddbtypes.AttributeDefinition) []string {
	attrTypes := make(map[string]string)
	for _, def := range defs {
		attrTypes[aws.ToString(def.AttributeName)] = strings.ToLower(string(def.AttributeType))
	}
	var keys []string
	for _, key := range schema {
		name := aws.ToString(key.AttributeName)
		keys = append(keys, fmt.Sprintf("%s:%s:%s", name, attrTypes[name], strings.ToLower(string(key.KeyType))))
	}
	return keys
}

// DynamoDBEnsure creates the table when it does not exist and waits for it to
// become active. An existing table with a different key schema is an error,
// keys cannot be changed in place.
func DynamoDBEnsure(ctx context.Context, input *dynamodb.CreateTableInput, preview bool) error {
	out, err := DynamoDBClient().DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: input.TableName,
	})
	if err != nil {
		var notFound *ddbtypes.ResourceNotFoundException
		if !errors.As(err, &notFound) {
			Logger.Println("error:", err)
			return err
		}
		if preview {
			Logger.Println(PreviewString(preview)+"dynamodb created table:", *input.TableName)
			return nil
		}
		_, err = DynamoDBClient().CreateTable(ctx, input)
		if err != nil {
			Logger.Println("error:", err)
			return err
		}
		err = Retry(ctx, func() error {
			out, err := DynamoDBClient().DescribeTable(ctx, &dynamodb.DescribeTableInput{
				TableName: input.TableName,
			})
			if err != nil {
				return err
			}
			if out.Table.TableStatus != ddbtypes.TableStatusActive {
				return fmt.Errorf("table not active: %s %s", *input.TableName, out.Table.TableStatus)
			}
			return nil
		})
		if err != nil {
			Logger.Println("error:", err)
			return err
		}
		Logger.Println("dynamodb created table:", *input.TableName)
		return nil
	}
	have := dynamoDBKeys(out.Table.KeySchema, out.Table.AttributeDefinitions)
	want := dynamoDBKeys(input.KeySchema, input.AttributeDefinitions)
	changes, err := diff.Diff(have, want)
	if err != nil {
		Logger.Println("error:", err)
		return err
	}
	if len(changes) > 0 {
		for _, change := range changes {
			Logger.Println("key change:", change.Type, strings.Join(change.Path, "."), change.From, "=>", change.To)
		}
		err := fmt.Errorf("cannot change keys of existing table: %s", *input.TableName)
		Logger.Println("error:", err)
		return err
	}
	return nil
}

func PreviewString(preview bool) string {
	if !preview {
		return ""
	}
	return "preview: "
}

/*
Package storagemodels defines the query types shared by datastore implementations.

QueryParams:
Parameters for querying the datastore:

	params := &QueryParams{
	    KeyConditionExpression: "PK = :pk AND SK BETWEEN :from AND :to",
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":pk":   &types.AttributeValueMemberS{Value: "OBS#IpAddress#10.0.0.1"},
	        ":from": &types.AttributeValueMemberS{Value: "2025-01-01T00:00:00Z"},
	        ":to":   &types.AttributeValueMemberS{Value: "2025-02-01T00:00:00Z"},
	    },
	}

QueryOptions:
Paging and retry behavior:

	opts := []QueryOption{
	    WithPageSize(25),
	    WithMaxRetries(3),
	    WithRetryBackoff(100 * time.Millisecond),
	}
*/
package storagemodels

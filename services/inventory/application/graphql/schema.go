package graphql

// Schema is the inventory GraphQL schema served at /api/graphql.
const Schema = `
schema {
	query: Query
	mutation: Mutation
}

enum Category {
	FOOD
	BEVERAGE
	SUPPLIES
	OTHER
}

enum StockStatus {
	LOW
	MEDIUM
	GOOD
}

type Item {
	_id: ID!
	name: String!
	quantity: Int!
	minThreshold: Int!
	category: Category!
	stockStatus: StockStatus!
	createdAt: String!
	updatedAt: String!
}

input CreateItemInput {
	name: String!
	quantity: Int!
	minThreshold: Int!
	category: Category!
}

input UpdateItemInput {
	name: String
	quantity: Int
	minThreshold: Int
	category: Category
}

type StockHistory {
	_id: ID!
	itemId: ID!
	itemName: String!
	quantity: Int!
	timestamp: String!
}

type TrendPoint {
	bucket: String!
	quantity: Int!
	timestamp: String!
}

type Trend {
	itemName: String!
	points: [TrendPoint!]!
}

type Forecast {
	itemName: String!
	currentStock: Int!
	avgUsageRate: Float!
	daysUntilRestock: Int
}

type Analytics {
	bucket: String!
	trends: [Trend!]!
	forecasts: [Forecast!]!
}

type Query {
	items: [Item!]!
	item(_id: ID!): Item
	lowStockItems: [Item!]!
	stockHistory(limit: Int): [StockHistory!]!
	analytics: Analytics!
}

type Mutation {
	createItem(input: CreateItemInput!): Item!
	updateItem(_id: ID!, input: UpdateItemInput!, mode: String): Item!
	deleteItem(_id: ID!): Item
}
`

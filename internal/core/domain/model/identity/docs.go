// Package identity holds the customer and restaurant accounts and the role
// tag used to pick between the customer, restaurant and delivery partner
// profile stores. Credentials are not modelled here.
package identity

package remote

// Storefront GraphQL documents. Cart mutations all reselect the full
// cart so the client can replace its copy wholesale.

const moneyFields = `
  amount
  currencyCode
`

const productFields = `
  id
  title
  handle
  description
  images(first: 10) {
    edges {
      node {
        url
        altText
      }
    }
  }
  variants(first: 20) {
    edges {
      node {
        id
        title
        price {` + moneyFields + `}
        compareAtPrice {` + moneyFields + `}
        availableForSale
        selectedOptions {
          name
          value
        }
      }
    }
  }
  options {
    name
    values
  }
  priceRange {
    minVariantPrice {` + moneyFields + `}
    maxVariantPrice {` + moneyFields + `}
  }
  tags
  productType
  vendor
  createdAt
  updatedAt
`

const cartFields = `
  id
  checkoutUrl
  totalQuantity
  cost {
    totalAmount {` + moneyFields + `}
    subtotalAmount {` + moneyFields + `}
    totalTaxAmount {` + moneyFields + `}
  }
  lines(first: 100) {
    edges {
      node {
        id
        quantity
        merchandise {
          ... on ProductVariant {
            id
            title
            image {
              url
              altText
            }
            product {
              id
              title
              handle
            }
            price {` + moneyFields + `}
            selectedOptions {
              name
              value
            }
          }
        }
        cost {
          totalAmount {` + moneyFields + `}
        }
      }
    }
  }
`

const queryGetProducts = `
query getProducts($first: Int!, $query: String, $sortKey: ProductSortKeys, $reverse: Boolean) {
  products(first: $first, query: $query, sortKey: $sortKey, reverse: $reverse) {
    edges {
      node {` + productFields + `}
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}`

const queryGetProductByHandle = `
query getProductByHandle($handle: String!) {
  productByHandle(handle: $handle) {` + productFields + `}
}`

const mutationCartCreate = `
mutation cartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart {` + cartFields + `}
    userErrors {
      field
      code
      message
    }
  }
}`

const mutationCartLinesAdd = `
mutation cartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {` + cartFields + `}
    userErrors {
      field
      code
      message
    }
  }
}`

const mutationCartLinesUpdate = `
mutation cartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart {` + cartFields + `}
    userErrors {
      field
      code
      message
    }
  }
}`

const mutationCartLinesRemove = `
mutation cartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart {` + cartFields + `}
    userErrors {
      field
      code
      message
    }
  }
}`

const mutationCustomerCreate = `
mutation customerCreate($input: CustomerCreateInput!) {
  customerCreate(input: $input) {
    customer {
      id
      email
      firstName
      lastName
      phone
    }
    customerUserErrors {
      field
      code
      message
    }
  }
}`

const mutationAccessTokenCreate = `
mutation customerAccessTokenCreate($input: CustomerAccessTokenCreateInput!) {
  customerAccessTokenCreate(input: $input) {
    customerAccessToken {
      accessToken
      expiresAt
    }
    customerUserErrors {
      field
      code
      message
    }
  }
}`

const queryGetCustomer = `
query getCustomer($customerAccessToken: String!) {
  customer(customerAccessToken: $customerAccessToken) {
    id
    email
    firstName
    lastName
    phone
    addresses(first: 10) {
      id
      firstName
      lastName
      company
      address1
      address2
      city
      province
      country
      zip
      phone
    }
    orders(first: 20) {
      edges {
        node {
          id
          name
          orderNumber
          processedAt
          financialStatus
          fulfillmentStatus
          totalPrice {` + moneyFields + `}
          lineItems(first: 50) {
            edges {
              node {
                title
                quantity
                variant {
                  image {
                    url
                    altText
                  }
                  price {` + moneyFields + `}
                  product {
                    handle
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

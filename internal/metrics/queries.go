package metrics

// Analytic queries over the orders / order_items schema. Every query takes
// the trailing window, in days, as its first parameter; the window is applied
// to the order date. These are the same aggregations the dashboard API runs,
// so the validation results are directly comparable with what it serves.

const (
	// queryCustomerMetrics aggregates the order stream into the four raw
	// customer metrics. COALESCE keeps SUM/AVG at 0 for an empty window.
	queryCustomerMetrics = `
		SELECT
			COUNT(DISTINCT o.id) AS total_orders,
			COUNT(DISTINCT o.customer_id) AS total_customers,
			COALESCE(SUM(o.total_price), 0) AS total_revenue,
			COALESCE(AVG(o.total_price), 0) AS avg_order_value
		FROM orders o
		WHERE o.order_date >= CURRENT_DATE - $1::int
	`

	// queryGeographicDistribution ranks cities by distinct customers and
	// keeps the top 10. Rows with a missing city are excluded up front.
	queryGeographicDistribution = `
		SELECT
			o.customer_city,
			COUNT(DISTINCT o.customer_id) AS customer_count,
			COUNT(*) AS order_count,
			COALESCE(SUM(o.total_price), 0) AS revenue
		FROM orders o
		WHERE o.order_date >= CURRENT_DATE - $1::int
			AND o.customer_city IS NOT NULL
			AND o.customer_city != ''
		GROUP BY o.customer_city
		ORDER BY customer_count DESC
		LIMIT 10
	`

	// queryCollaborativeMetrics is the three-stage pair aggregation.
	// customer_pairs joins customer_products on shared product with
	// customer1 < customer2, which rules out self-pairs and reversed
	// duplicates; HAVING >= 2 defines an active pair.
	queryCollaborativeMetrics = `
		WITH customer_products AS (
			SELECT
				o.customer_id,
				oi.product_id,
				COUNT(*) AS purchase_count
			FROM orders o
			JOIN order_items oi ON o.id = oi.order_id
			WHERE o.order_date >= CURRENT_DATE - $1::int
			GROUP BY o.customer_id, oi.product_id
		),
		customer_pairs AS (
			SELECT
				cp1.customer_id AS customer1,
				cp2.customer_id AS customer2,
				COUNT(DISTINCT cp1.product_id) AS shared_products
			FROM customer_products cp1
			JOIN customer_products cp2
				ON cp1.product_id = cp2.product_id
				AND cp1.customer_id < cp2.customer_id
			GROUP BY cp1.customer_id, cp2.customer_id
			HAVING COUNT(DISTINCT cp1.product_id) >= 2
		),
		stats AS (
			SELECT
				COUNT(DISTINCT cp.customer_id) AS total_users,
				COUNT(DISTINCT cp.product_id) AS total_products,
				COALESCE(SUM(cp.purchase_count), 0) AS total_purchases,
				COUNT(*) AS total_user_product_combinations
			FROM customer_products cp
		),
		pair_stats AS (
			SELECT
				COUNT(*) AS total_pairs,
				AVG(shared_products) AS avg_shared_products
			FROM customer_pairs
		)
		SELECT
			s.total_users,
			s.total_products,
			s.total_purchases,
			s.total_user_product_combinations,
			COALESCE(ps.total_pairs, 0) AS active_customer_pairs,
			COALESCE(ps.avg_shared_products, 0) AS avg_shared_products
		FROM stats s
		CROSS JOIN pair_stats ps
	`

	// queryHighValuePairs self-joins order items on order id with
	// product_a < product_b, then keeps pairs whose mean combined price
	// exceeds the threshold ($2).
	queryHighValuePairs = `
		WITH order_pairs AS (
			SELECT
				oi1.product_id AS product_a,
				oi2.product_id AS product_b,
				(oi1.total_price + oi2.total_price) AS pair_value
			FROM order_items oi1
			JOIN order_items oi2 ON oi1.order_id = oi2.order_id
			WHERE oi1.product_id < oi2.product_id
			AND oi1.order_id IN (
				SELECT id FROM orders
				WHERE order_date >= CURRENT_DATE - $1::int
			)
		)
		SELECT
			product_a,
			product_b,
			AVG(pair_value) AS avg_pair_value,
			COUNT(*) AS purchase_frequency
		FROM order_pairs
		GROUP BY product_a, product_b
		HAVING AVG(pair_value) > $2
		ORDER BY avg_pair_value DESC
	`

	// queryCrossRegionProducts keeps product/region combinations with at
	// least $2 distinct customers, then products present in at least $3
	// regions with a combined customer total of at least $4.
	queryCrossRegionProducts = `
		WITH regional_popularity AS (
			SELECT
				oi.product_id,
				ps.product_name,
				o.customer_city AS region,
				COUNT(DISTINCT o.customer_id) AS regional_customers
			FROM order_items oi
			JOIN orders o ON oi.order_id = o.id
			LEFT JOIN product_statistics ps ON oi.product_id = ps.product_id
			WHERE o.order_date >= CURRENT_DATE - $1::int
			AND o.customer_city IS NOT NULL
			GROUP BY oi.product_id, ps.product_name, o.customer_city
			HAVING COUNT(DISTINCT o.customer_id) >= $2
		)
		SELECT
			product_id,
			product_name,
			COUNT(DISTINCT region) AS region_count,
			SUM(regional_customers) AS total_customers,
			STRING_AGG(region, ', ') AS regions
		FROM regional_popularity
		GROUP BY product_id, product_name
		HAVING COUNT(DISTINCT region) >= $3
		AND SUM(regional_customers) >= $4
		ORDER BY region_count DESC, total_customers DESC
	`
)

package repository

const (
	personConstraintCypher = `CREATE CONSTRAINT person_id IF NOT EXISTS FOR (p:Person) REQUIRE p.id IS UNIQUE`
	movieConstraintCypher  = `CREATE CONSTRAINT movie_id IF NOT EXISTS FOR (m:Movie) REQUIRE m.id IS UNIQUE`
	personNameIndexCypher  = `CREATE INDEX person_name IF NOT EXISTS FOR (p:Person) ON (p.nameKey)`

	upsertPeopleCypher = `
UNWIND $rows AS row
MERGE (p:Person {id: row.id})
SET p.name = row.name,
    p.nameKey = row.nameKey,
    p.birth = row.birth
`

	upsertMoviesCypher = `
UNWIND $rows AS row
MERGE (m:Movie {id: row.id})
SET m.title = row.title,
    m.year = row.year
`

	linkStarsCypher = `
UNWIND $rows AS row
MATCH (p:Person {id: row.personId})
MATCH (m:Movie {id: row.movieId})
MERGE (p)-[:STARRED_IN]->(m)
RETURN count(*) AS linked
`

	streamPeopleCypher = `
MATCH (p:Person)
RETURN p.id AS id, p.name AS name, p.birth AS birth
ORDER BY p.id
SKIP $skip
LIMIT $limit
`

	streamMoviesCypher = `
MATCH (m:Movie)
RETURN m.id AS id, m.title AS title, m.year AS year
ORDER BY m.id
SKIP $skip
LIMIT $limit
`

	streamStarsCypher = `
MATCH (p:Person)-[:STARRED_IN]->(m:Movie)
RETURN p.id AS personId, m.id AS movieId
ORDER BY personId, movieId
SKIP $skip
LIMIT $limit
`

	countsCypher = `
CALL { MATCH (p:Person) RETURN count(p) AS people }
CALL { MATCH (m:Movie) RETURN count(m) AS movies }
CALL { MATCH (:Person)-[s:STARRED_IN]->(:Movie) RETURN count(s) AS stars }
RETURN people, movies, stars
`
)

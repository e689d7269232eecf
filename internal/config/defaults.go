package config

// Compiled-in keyword tables. These are the fallback when the config file
// leaves a list empty; operators can override any of them per deployment.

var defaultIntern = []string{"intern", "internship", "co-op", "coop"}

// "internal ..." phrases collide with the "intern" substring and mark a
// posting as not an internship.
var defaultExclude = []string{
	"internal controls", "internal audit", "internal review",
	"internal process", "internal system", "internal tool",
	"internal team", "internal communication",
}

// Phrases that corroborate a title-only internship hit when the
// description is long enough to expect one. Bare keywords like "intern"
// don't belong here: the title already contains one, so they would make
// the check vacuous.
var defaultCorroborate = []string{
	"quarter/semester/trimester remaining",
	"enrolled in", "university program",
	"summer intern", "winter intern", "spring intern",
	"intern program", "internship program", "co-op program",
}

// Two-letter tokens ("ai", "ml", "bi") are deliberately absent: matching
// is by substring and they collide with ordinary words like "retail".
var defaultSubjectRoles = []string{
	"data analyst", "data engineer", "data architect", "data scientist",
	"analytics", "business intelligence", "etl", "data pipeline",
	"data warehouse", "data lake", "machine learning",
	"distributed systems", "genai", "observability", "data infrastructure",
	"data platform", "data quality", "data governance",
}

var defaultCloudIndicators = []string{
	"minimum of one quarter/semester/trimester remaining",
	"aws support team", "cloud support", "cloud computing",
	"aws professional services", "cloud technology",
	"troubleshooting labs", "simulated customer cases",
	"certification attainment", "experiential learning",
}

var defaultTechSkills = []string{
	"python", "sql", "cloud", "aws", "azure", "gcp", "networking",
	"linux", "database",
}

var defaultDataTech = []string{
	"distributed systems", "genai", "llm", "machine learning",
	"data pipeline", "etl", "data warehouse", "data lake", "spark",
	"hadoop", "kafka", "airflow", "observability", "opentelemetry",
	"analytics", "business intelligence", "data infrastructure",
	"data platform", "data quality", "data governance", "snowflake",
	"databricks", "redshift", "bigquery", "tableau", "power bi",
}

var defaultDataSkills = []string{
	"python", "sql", "spark", "hadoop", "kafka", "airflow", "dbt",
	"snowflake", "databricks", "redshift", "bigquery", "tableau",
	"power bi", "looker", "pandas", "numpy", "scikit-learn", "tensorflow",
	"pytorch", "scala", "distributed systems",
	"genai", "llm", "opentelemetry", "observability",
}

// Known company -> career page mappings, checked before domain guessing.
var defaultOverrides = map[string]string{
	"Amazon":     "https://www.amazon.jobs",
	"Google":     "https://careers.google.com",
	"Microsoft":  "https://careers.microsoft.com",
	"Meta":       "https://www.metacareers.com",
	"Facebook":   "https://www.metacareers.com",
	"Apple":      "https://jobs.apple.com",
	"Netflix":    "https://jobs.netflix.com",
	"Tesla":      "https://www.tesla.com/careers",
	"Nvidia":     "https://nvidia.wd5.myworkdayjobs.com",
	"Oracle":     "https://careers.oracle.com",
	"IBM":        "https://www.ibm.com/careers",
	"Salesforce": "https://www.salesforce.com/careers",
	"Adobe":      "https://careers.adobe.com",
	"Lyft":       "https://www.lyft.com/careers",
	"Uber":       "https://www.uber.com/careers",
	"Stripe":     "https://stripe.com/jobs",
	"Palantir":   "https://www.palantir.com/careers",
	"Snowflake":  "https://careers.snowflake.com",
	"Databricks": "https://www.databricks.com/company/careers",
}

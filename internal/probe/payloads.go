package probe

import "bytemomo/moray/internal/domain"

// Query payload sets per category. Each statement is synthetic traffic the
// monitoring product is expected to flag; the database rejecting a statement
// is a normal part of the exercise, not a probe failure.

var injectionPayloads = []string{
	"SELECT * FROM users WHERE id = '1' OR '1'='1'",
	"SELECT * FROM users WHERE name = '' UNION SELECT username, password FROM mysql.user -- '",
	"SELECT * FROM orders WHERE id = 1; DROP TABLE audit_log; --",
	"SELECT * FROM customers WHERE email = '' OR 1=1 LIMIT 100 -- sqlmap probe",
	"SELECT IF(SUBSTRING(VERSION(),1,1)='8', SLEEP(0), SLEEP(0))",
}

var suspiciousQueryPayloads = []string{
	"SELECT card_number, cvv, expiry FROM payment_cards",
	"SELECT ssn, date_of_birth, full_name FROM customer_pii",
	"SELECT * FROM credentials WHERE password IS NOT NULL",
	"SELECT COUNT(*) FROM information_schema.tables",
	"SELECT table_name, column_name FROM information_schema.columns WHERE column_name LIKE '%password%'",
}

var harmfulApplicationPayloads = []string{
	"SET @app_signature = 'sqlmap/1.7-dev (https://sqlmap.org)'",
	"SELECT 'havij_scan_marker', VERSION(), CURRENT_USER()",
	"SELECT user, host, authentication_string FROM mysql.user",
}

var shellCommandPayloads = []string{
	"SELECT sys_exec('whoami')",
	"SELECT LOAD_FILE('/etc/passwd')",
	"SELECT '<?php system($_GET[\"c\"]); ?>' INTO OUTFILE '/var/www/html/shell.php'",
	"CREATE FUNCTION sys_eval RETURNS STRING SONAME 'lib_mysqludf_sys.so'",
}

func payloadsFor(c domain.Category) []string {
	switch c {
	case domain.SQLInjection:
		return injectionPayloads
	case domain.SuspiciousQueries:
		return suspiciousQueryPayloads
	case domain.HarmfulApplication:
		return harmfulApplicationPayloads
	case domain.ShellCommands:
		return shellCommandPayloads
	default:
		return nil
	}
}

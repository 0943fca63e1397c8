package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/shop-admin-dashboard/config"
	"github.com/oksasatya/shop-admin-dashboard/internal/application"
	repo "github.com/oksasatya/shop-admin-dashboard/internal/domain/repository"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Router wires modules from these singletons. Optional collaborators
// (audit, index, images, redis) stay nil when disabled.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	jwtManager  *helpers.JWTManager

	accounts repo.AccountRepository
	products repo.ProductRepository
	audit    repo.AuditRepository

	mailSender   application.MailSender
	imageHost    application.ImageHost
	accountIndex application.AccountIndex
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger { return logger }
func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager { return jwtManager }

func SetAccounts(r repo.AccountRepository) { accounts = r }
func GetAccounts() repo.AccountRepository { return accounts }
func SetProducts(r repo.ProductRepository) { products = r }
func GetProducts() repo.ProductRepository { return products }
func SetAudit(r repo.AuditRepository) { audit = r }
func GetAudit() repo.AuditRepository { return audit }

func SetMailer(m application.MailSender) { mailSender = m }
func GetMailer() application.MailSender { return mailSender }
func SetImages(h application.ImageHost) { imageHost = h }
func GetImages() application.ImageHost { return imageHost }
func SetAccountIndex(x application.AccountIndex) { accountIndex = x }
func GetAccountIndex() application.AccountIndex { return accountIndex }

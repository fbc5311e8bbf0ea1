package main

import (
	"flag"
	"os"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configsenv"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/database"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()
	migrateFlag := flag.Bool("migrate", false, "Veritabanı başlatma işlemini çalıştır (migrasyonları içerir)")
	seedFlag := flag.Bool("seed", false, "Veritabanı başlatma işlemini çalıştır (seederları içerir)")
	flag.Parse()

	configsenv.Load()
	configsdatabase.InitDB()

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	if err := database.Initialize(configsdatabase.GetDB(), *migrateFlag, *seedFlag); err != nil {
		configsdatabase.CloseDB()
		configslog.SyncLogger()
		os.Exit(1)
	}
	configsdatabase.CloseDB()
	configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
}
